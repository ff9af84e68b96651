/*
	blctl exposes display backlight brightness control on the system D-Bus
*/

package main

import "github.com/hoppxi/blctl/internal/cmd"

func main() {
	cmd.Execute()
}
