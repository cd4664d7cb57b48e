package main

import "github.com/lsst-sqre/rsp-jupyter-extensions/cmd"

func main() {
	cmd.Execute(cmd.RootCmd())
}
