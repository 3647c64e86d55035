// Command almanac prints almanac days, solar terms and lunar years from the
// terminal.
package main

import "github.com/zapponejosh/almanac-api/internal/cli"

func main() {
	cli.Execute()
}
