// Package commands implements the envportald command line: the HTTP server,
// a listing of the configured flows, and a terminal rendition of one flow.
package commands
