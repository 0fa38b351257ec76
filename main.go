/*
Copyright © 2025 Typevault <oss@typevault.dev>
*/
package main

import "github.com/typevault/fontmerge/cmd"

func main() {
	cmd.Execute()
}
