package termbridge

import "strings"

// logoArt is the project banner drawn by logo nodes.
var logoArt = strings.Split(strings.TrimPrefix(`
▀█▀ █▀▀ █▀█ █▀▄▀█ █▄▄ █▀█ █ █▀▄ █▀▀ █▀▀
 █  ██▄ █▀▄ █ ▀ █ █▄█ █▀▄ █ █▄▀ █▄█ ██▄`, "\n"), "\n")

// mascotArt is the character drawn by mascot nodes.
var mascotArt = strings.Split(strings.TrimPrefix(`
   ▄▄       ▄▄
  █  ▀▄▄▄▄▄▀  █
   ▀▄ ▄▀ ▀▄ ▄▀
    █ ● ▄ ● █
    ▀▄  ▀  ▄▀
  ▄▄▄▄▀▀▀▀▀▄▄▄▄
 █  ▐▌     ▐▌  █
  ▀▀▀▀     ▀▀▀▀`, "\n"), "\n")

// renderArt draws fixed art from the top-left corner, clipped to area.
func (p *renderPass) renderArt(area Rect, art []string) error {
	for i, line := range art {
		y := area.Y + i
		if y >= area.Bottom() {
			break
		}
		p.buf.WriteStringN(area.X, y, line, area.Width, Style{})
	}
	return nil
}
