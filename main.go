package main

import "github.com/nekruzvatanshoev/carsearch/pkg/cmd"

func main() {
	cmd.Execute()
}
