package sources

import "errors"

// ErrMalformedInput indicates the input text could not be parsed at all:
// empty input, an unparseable line, or an invalid JSON document.
var ErrMalformedInput = errors.New("sources: malformed input")

// ErrUnknownNode indicates a relationship referenced a node ID that was
// never declared.
var ErrUnknownNode = errors.New("sources: unknown node reference")

// ErrUnknownFormat indicates NewSource was asked for a format it does not
// recognize.
var ErrUnknownFormat = errors.New("sources: unknown format")
