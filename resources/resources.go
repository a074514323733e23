package resources

import (
	_ "embed"
)

//go:embed config/default.yaml
var DefaultConfig []byte

//go:embed about.txt
var AboutText string
