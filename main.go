// Command htmlkit builds and queries HTML documents through element facades.
package main

import "github.com/chrisuehlinger/htmlkit/cmd"

func main() {
	cmd.Execute()
}
