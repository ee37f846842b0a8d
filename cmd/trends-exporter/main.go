// Package main is the trends-exporter entry point.
//
// Without a subcommand it opens the desktop form. Headless use:
//
//	trends-exporter export --region GR --region RO --output ~/exports
//	trends-exporter regions
//	trends-exporter init
package main

func main() {
	Execute()
}
