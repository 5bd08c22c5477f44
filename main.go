package main

import "github.com/yagoutpay/gateway/cmd"

func main() {
	cmd.Execute()
}
