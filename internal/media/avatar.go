package media

import (
	"bytes"
	"fmt"
	"image"

	// formatos aceitos no upload
	_ "image/jpeg"
	_ "image/png"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	avatarMaxSide = 512
	webpQuality   = 80
)

// NormalizeAvatar decodifica a imagem enviada, reduz para no máximo
// 512px no maior lado e reencoda em WebP. Todo avatar armazenado sai
// daqui com formato e tamanho previsíveis.
func NormalizeAvatar(data []byte) ([]byte, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode avatar: %w", err)
	}

	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	if w > avatarMaxSide || h > avatarMaxSide {
		if w >= h {
			h = h * avatarMaxSide / w
			w = avatarMaxSide
		} else {
			w = w * avatarMaxSide / h
			h = avatarMaxSide
		}

		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), src, bounds, draw.Over, nil)
		src = dst
	}

	var out bytes.Buffer
	if err := webp.Encode(&out, src, &webp.Options{Quality: webpQuality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}

	return out.Bytes(), nil
}
