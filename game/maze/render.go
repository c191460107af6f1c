package maze

import (
	"fmt"
	"strings"
)

// Render provides a textual representation of a maze, with walls drawn where
// cells are not adjacent and mud passages annotated with their weight.
func Render(g Graph, width, height int) string {
	var output strings.Builder

	// Top boundary
	output.WriteString("+" + strings.Repeat("---+", width) + "\n")

	for row := 0; row < height; row++ {
		// Cell rows
		cellRow := "|"
		for col := 0; col < width; col++ {
			cell := row*width + col
			cellRow += "   "

			// Add east wall, passage, or mud weight
			east := g.Weight(cell, cell+1)
			switch {
			case col == width-1 || east == 0:
				cellRow += "|"
			case east == 1:
				cellRow += " "
			default:
				cellRow += fmt.Sprintf("%d", east%10)
			}
		}
		output.WriteString(cellRow + "\n")

		// Wall rows
		wallRow := "+"
		for col := 0; col < width; col++ {
			cell := row*width + col
			south := g.Weight(cell, cell+width)
			switch {
			case row == height-1 || south == 0:
				wallRow += "---+"
			case south == 1:
				wallRow += "   +"
			default:
				wallRow += fmt.Sprintf(" %d +", south%10)
			}
		}
		output.WriteString(wallRow + "\n")
	}

	return output.String()
}
