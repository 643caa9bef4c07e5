// Command colorexpr compiles color expressions to shader code, builds
// shaders from them and applies them to images.
package main

import "github.com/gogpu/colorexpr/cmd/colorexpr/internal/command"

func main() {
	command.Execute()
}
