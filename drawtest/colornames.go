package drawtest

import (
	"fmt"

	"github.com/rjkroege/imgembed/draw"
)

var colourNames = map[draw.Color]string{
	draw.Black:       "Black",
	draw.Darkyellow:  "Darkyellow",
	draw.Medblue:     "Medblue",
	draw.Paleyellow:  "Paleyellow",
	draw.Purpleblue:  "Purpleblue",
	draw.Transparent: "Transparent",
	draw.White:       "White",
}

// NiceColourName names the well known colours and prints the rest in hex.
func NiceColourName(num draw.Color) string {
	if s, ok := colourNames[num]; ok {
		return s
	}
	return fmt.Sprintf("color(%x)", uint32(num))
}
