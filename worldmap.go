package termbridge

import "sync"

// worldLand is a coarse land mask in 10 degree cells, north to south from
// latitude 90 and west to east from longitude -180.
var worldLand = [...]string{
	"............###.....................",
	"........###.####...#....########....",
	".########.#####.#.##################",
	"..#.####.###.....#################..",
	".....#######.....################...",
	".....#####.......################...",
	"......####......###############.....",
	"........##......#######..####.#.....",
	"..........###....######.....###.....",
	"..........#####....###......#####...",
	"..........####.....####......####...",
	"...........####....####......####...",
	"...........##......##........####.##",
	"...........##...................#.#.",
	"...........#........................",
	"...........##.......##############..",
	"...#########...#####################",
	"####################################",
}

const worldCell = 10.0

// MapResolution picks how densely the world map coastline is sampled.
type MapResolution uint8

const (
	MapLow MapResolution = iota
	MapHigh
)

// ParseMapResolution decodes low or high. Anything else is low.
func ParseMapResolution(s string) MapResolution {
	if s == "high" {
		return MapHigh
	}
	return MapLow
}

// CanvasMap draws the world coastline in longitude/latitude coordinates,
// so it fills a canvas bounded by x [-180, 180] and y [-90, 90].
type CanvasMap struct {
	Resolution MapResolution
	Color      Color
}

func (s CanvasMap) paint(g *grid) {
	for _, c := range worldCoast(s.Resolution) {
		g.point(c[0], c[1], s.Color)
	}
}

var (
	coastOnce sync.Once
	coast     [2][][2]float64
)

func worldCoast(res MapResolution) [][2]float64 {
	coastOnce.Do(func() {
		coast[MapLow], coast[MapHigh] = buildCoast()
	})
	return coast[res]
}

func isLand(row, col int) bool {
	if row < 0 || row >= len(worldLand) {
		return false
	}
	cols := len(worldLand[row])
	col = (col%cols + cols) % cols
	return worldLand[row][col] == '#'
}

// buildCoast samples the edges between land and sea. Low resolution keeps
// one point per coastal cell. High resolution walks every sea-facing edge
// in 2 degree steps.
func buildCoast() (low, high [][2]float64) {
	const step = 2.0
	for row := range worldLand {
		for col := range worldLand[row] {
			if !isLand(row, col) {
				continue
			}
			west := -180 + float64(col)*worldCell
			north := 90 - float64(row)*worldCell
			east, south := west+worldCell, north-worldCell

			coastal := false
			edges := []struct {
				sea            bool
				x1, y1, x2, y2 float64
			}{
				{row > 0 && !isLand(row-1, col), west, north, east, north},
				{!isLand(row+1, col) && row+1 < len(worldLand), west, south, east, south},
				{!isLand(row, col-1), west, south, west, north},
				{!isLand(row, col+1), east, south, east, north},
			}
			for _, e := range edges {
				if !e.sea {
					continue
				}
				coastal = true
				for d := 0.0; d <= worldCell; d += step {
					t := d / worldCell
					high = append(high, [2]float64{e.x1 + (e.x2-e.x1)*t, e.y1 + (e.y2-e.y1)*t})
				}
			}
			if coastal {
				low = append(low, [2]float64{west + worldCell/2, north - worldCell/2})
			}
		}
	}
	return low, high
}
