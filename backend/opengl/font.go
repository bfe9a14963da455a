package opengl

import "github.com/go-gl/gl/v4.1-core/gl"

// Atlas layout: printable ASCII from 32, 16 glyphs per row, 8x8 pixels each.
const (
	atlasCols   = 16
	glyphSize   = 8
	atlasWidth  = atlasCols * glyphSize
	atlasHeight = 6 * glyphSize
)

// glyphRows holds one hex string per glyph, two digits per pixel row, MSB
// leftmost. Missing glyphs stay blank.
var glyphRows = map[byte]string{
	'0': "3C666E7666663C00",
	'1': "1838181818187E00",
	'2': "3C66061C30607E00",
	'3': "3C66061C06663C00",
	'4': "0C1C3C6C7E0C0C00",
	'5': "7E607C0606663C00",
	'6': "1C30607C66663C00",
	'7': "7E060C1830303000",
	'8': "3C66663C66663C00",
	'9': "3C66663E060C3800",
	'A': "183C66667E666600",
	'B': "7C66667C66667C00",
	'C': "3C66606060663C00",
	'D': "786C6666666C7800",
	'E': "7E60607C60607E00",
	'F': "7E60607C60606000",
	'G': "3C66606E66663E00",
	'H': "6666667E66666600",
	'I': "7E18181818187E00",
	'J': "3E0C0C0C0C6C3800",
	'K': "666C7870786C6600",
	'L': "6060606060607E00",
	'M': "63777F6B63636300",
	'N': "66767E7E6E666600",
	'O': "3C66666666663C00",
	'P': "7C66667C60606000",
	'Q': "3C6666666A6C3600",
	'R': "7C66667C6C666600",
	'S': "3C66603C06663C00",
	'T': "7E18181818181800",
	'U': "6666666666663C00",
	'V': "66666666663C1800",
	'W': "6363636B7F776300",
	'X': "66663C183C666600",
	'Y': "6666663C18181800",
	'Z': "7E060C1830607E00",
	'a': "00003C063E663E00",
	'b': "60607C6666667C00",
	'c': "00003C6660663C00",
	'd': "06063E6666663E00",
	'e': "00003C667E603C00",
	'f': "1C30307C30303000",
	'g': "00003E66663E063C",
	'h': "60607C6666666600",
	'i': "1800381818183C00",
	'j': "0C001C0C0C0C6C38",
	'k': "6060666C786C6600",
	'l': "3818181818183C00",
	'm': "0000767F6B6B6300",
	'n': "00007C6666666600",
	'o': "00003C6666663C00",
	'p': "00007C66667C6060",
	'q': "00003E66663E0606",
	'r': "00006C7660606000",
	's': "00003E603C067C00",
	't': "30307C3030301C00",
	'u': "0000666666663E00",
	'v': "00006666663C1800",
	'w': "0000636B6B7F3600",
	'x': "0000663C183C6600",
	'y': "00006666663E063C",
	'z': "00007E0C18307E00",
	' ': "0000000000000000",
	'.': "0000000000181800",
	',': "0000000000181830",
	':': "0000181800181800",
	';': "0000181800181830",
	'=': "00007E007E000000",
	'-': "0000007E00000000",
	'+': "0018187E18180000",
	'[': "1C18181818181C00",
	']': "3818181818183800",
	'>': "6030180C18306000",
	'<': "060C1830180C0600",
	'/': "02060C1830604000",
	'_': "0000000000007E00",
	'(': "0C18303030180C00",
	')': "30180C0C0C183000",
	'*': "00663CFF3C660000",
	'|': "1818181818181800",
	'?': "3C66061C18001800",
	'!': "1818181818001800",
	'@': "3C666E6A6E603C00",
	'#': "247E24247E240000",
	'$': "183E603C067C1800",
	'%': "6264081026460000",
	'^': "183C660000000000",
	'&': "386C3876DCCC7600",
	'"': "6666000000000000",
	'`': "30180C0000000000",
	'~': "000076DC00000000",
	'{': "0E18187018180E00",
	'}': "7018180E18187000",

	// Escaped keys.
	'\\': "406030180C060200",
	'\'': "1818300000000000",
}

// fontAtlas rasterizes glyphRows into an 8-bit coverage image.
func fontAtlas() []byte {
	data := make([]byte, atlasWidth*atlasHeight)
	for ch, hex := range glyphRows {
		idx := int(ch) - 32
		ox := (idx % atlasCols) * glyphSize
		oy := (idx / atlasCols) * glyphSize
		for y := 0; y < glyphSize; y++ {
			bits := hexByte(hex[2*y], hex[2*y+1])
			for x := 0; x < glyphSize; x++ {
				if bits&(0x80>>x) != 0 {
					data[(oy+y)*atlasWidth+ox+x] = 0xFF
				}
			}
		}
	}
	return data
}

func hexByte(hi, lo byte) byte {
	return nibble(hi)<<4 | nibble(lo)
}

func nibble(c byte) byte {
	if c >= 'A' {
		return c - 'A' + 10
	}
	return c - '0'
}

// uploadFontAtlas creates the single-channel font texture.
func uploadFontAtlas() uint32 {
	data := fontAtlas()
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.NEAREST)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.NEAREST)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RED, atlasWidth, atlasHeight, 0, gl.RED, gl.UNSIGNED_BYTE, gl.Ptr(data))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	return tex
}
