package main

import (
	"github.com/maalberto-engineer/IoT-Data-Generator/internal/bootstrap"
)

func main() {
	bootstrap.Bootstrap()
}
