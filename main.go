package main

import "github.com/Aarif786602/FinFlex--Financial-Discipline-Architect/cmd"

func main() {
	cmd.Execute()
}
