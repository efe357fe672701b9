package machine

// Framebuffer is the monochrome display, indexed [y][x], true meaning lit.
type Framebuffer [DisplayHeight][DisplayWidth]bool

// Clear turns every pixel off.
func (f *Framebuffer) Clear() {
	*f = Framebuffer{}
}

// Pixel returns whether the pixel at x, y is lit.
// Coordinates wrap around the display edges.
func (f *Framebuffer) Pixel(x, y int) bool {
	return f[wrap(y, DisplayHeight)][wrap(x, DisplayWidth)]
}

// SetPixel sets the pixel at x, y. Coordinates wrap around the display edges.
func (f *Framebuffer) SetPixel(x, y int, lit bool) {
	f[wrap(y, DisplayHeight)][wrap(x, DisplayWidth)] = lit
}

// Flip XORs the pixel at x, y with lit and returns whether a lit pixel was
// turned off. Coordinates wrap around the display edges.
func (f *Framebuffer) Flip(x, y int, lit bool) bool {
	current := f.Pixel(x, y)
	f.SetPixel(x, y, current != lit)
	return lit && current
}

// Pixels returns the framebuffer flattened in row-major order.
func (f *Framebuffer) Pixels() []bool {
	pixels := make([]bool, 0, DisplayWidth*DisplayHeight)
	for _, row := range f {
		pixels = append(pixels, row[:]...)
	}
	return pixels
}

// Lit returns the number of lit pixels.
func (f *Framebuffer) Lit() int {
	var count int
	for _, row := range f {
		for _, pixel := range row {
			if pixel {
				count++
			}
		}
	}
	return count
}

func wrap(value, size int) int {
	value %= size
	if value < 0 {
		value += size
	}
	return value
}
