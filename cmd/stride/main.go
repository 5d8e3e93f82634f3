// Command stride runs the todo tracking server.
package main

func main() {
	Execute()
}
