// Package main provides the tv_indicators CLI.
package main

func main() {
	Execute()
}
