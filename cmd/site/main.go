// Command site serves, builds and imports content for the 42arch website.
package main

func main() {
	Execute()
}
