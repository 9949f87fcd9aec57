package render

import "image"

// BoxBlur replaces every pixel with the mean of the (2k+1) wide window around
// it, horizontally then vertically. Edge pixels are repeated past the border.
func BoxBlur(img *image.RGBA, k int) {
	if k <= 0 {
		return
	}
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return
	}
	line := make([]uint8, max(w, h)*4)

	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		boxLine(row, line[:w*4], 4, w, k)
	}
	column := make([]uint8, h*4)
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			copy(column[y*4:y*4+4], img.Pix[y*img.Stride+x*4:])
		}
		boxLine(column, line[:h*4], 4, h, k)
		for y := 0; y < h; y++ {
			copy(img.Pix[y*img.Stride+x*4:y*img.Stride+x*4+4], column[y*4:])
		}
	}
}

// boxLine blurs n pixels of the given channel count in place using scratch,
// keeping a running sum per channel.
func boxLine(pix, scratch []uint8, channels, n, k int) {
	copy(scratch, pix)
	at := func(i, ch int) int {
		i = min(max(i, 0), n-1)
		return int(scratch[i*channels+ch])
	}
	width := 2*k + 1
	for ch := 0; ch < channels; ch++ {
		sum := 0
		for i := -k; i <= k; i++ {
			sum += at(i, ch)
		}
		for i := 0; i < n; i++ {
			pix[i*channels+ch] = uint8((sum + width/2) / width)
			sum += at(i+k+1, ch) - at(i-k, ch)
		}
	}
}
