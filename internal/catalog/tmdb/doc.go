// Package tmdb provides a The Movie Database API client for multi-type title
// search. Only the endpoints the resolver needs are implemented; results carry
// the raw TMDB media_type tags ("movie", "tv", "person", ...).
package tmdb
