// Package extract turns raw chat text into candidate movie/series titles.
//
// Two interchangeable strategies implement the Extractor interface. The
// pattern strategy applies lexical heuristics: quoted spans, Title Case runs,
// and short fragments following recommendation trigger words. The model
// strategy asks a chat-completion model for a strict JSON list of titles and
// filters the output.
//
// Absence of a match is the normal case. Both strategies tolerate empty and
// malformed input; the model strategy degrades to an empty candidate list when
// the completion service misbehaves.
package extract
