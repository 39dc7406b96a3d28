// Package gharchive fetches and reads GH Archive hour files.
//
// An hour file is a gzip compressed stream of newline delimited JSON events
// named YYYY-MM-DD-H.json.gz. The Mirror keeps a local cache directory of hour
// files with atomic writes; the Reader streams event envelopes out of one file
package gharchive
