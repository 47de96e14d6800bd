package main

import "github.gatech.edu/ECEInnovation/RISC-V-Assembler/cmd"

func main() {
	cmd.Execute()
}
