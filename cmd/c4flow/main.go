package main

func main() {
	Execute(engineVersion)
}
