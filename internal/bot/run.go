package bot

import (
	"context"
	"sync"
	"time"
)

const pollRetryDelay = 3 * time.Second

// Run long-polls for updates until the context is cancelled. Each update is
// handled on its own goroutine, so a slow catalog or completion call blocks
// only the message that triggered it. Run returns after in-flight handlers
// finish.
func (b *Bot) Run(ctx context.Context, pollTimeoutSeconds int) error {
	var wg sync.WaitGroup
	defer wg.Wait()

	var offset int64
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		updates, err := b.api.GetUpdates(ctx, offset, pollTimeoutSeconds)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			b.logger.Warn("update poll failed", "error", err)
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(pollRetryDelay):
			}
			continue
		}

		for _, update := range updates {
			update := update
			if update.UpdateID >= offset {
				offset = update.UpdateID + 1
			}
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := b.HandleUpdate(ctx, update); err != nil {
					b.logger.Error("update handling failed", "update_id", update.UpdateID, "error", err)
				}
			}()
		}
	}
}
