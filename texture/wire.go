package texture

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/draw"
	"image/png"
)

// wireResult is the JSON body of a generate response; images are base64 PNGs
type wireResult struct {
	Diffuse  []string `json:"diffuse"`
	Normal   []string `json:"normal,omitempty"`
	Specular []string `json:"specular,omitempty"`
	Metadata Metadata `json:"metadata"`
}

func encodeResult(r *Result) (*wireResult, error) {
	w := &wireResult{Metadata: r.Metadata}
	var err error
	if w.Diffuse, err = encodeImages(r.Diffuse); err != nil {
		return nil, err
	}
	if w.Normal, err = encodeImages(r.Normal); err != nil {
		return nil, err
	}
	if w.Specular, err = encodeImages(r.Specular); err != nil {
		return nil, err
	}
	return w, nil
}

func (w *wireResult) decode() (*Result, error) {
	if len(w.Diffuse) == 0 {
		return nil, fmt.Errorf("texture: response has no diffuse frames")
	}
	r := &Result{Metadata: w.Metadata}
	var err error
	if r.Diffuse, err = decodeImages(w.Diffuse); err != nil {
		return nil, err
	}
	if r.Normal, err = decodeImages(w.Normal); err != nil {
		return nil, err
	}
	if r.Specular, err = decodeImages(w.Specular); err != nil {
		return nil, err
	}
	return r, nil
}

func encodeImages(imgs []*image.RGBA) ([]string, error) {
	var out []string
	for _, img := range imgs {
		var buf bytes.Buffer
		if err := png.Encode(&buf, img); err != nil {
			return nil, fmt.Errorf("texture: encode png: %w", err)
		}
		out = append(out, base64.StdEncoding.EncodeToString(buf.Bytes()))
	}
	return out, nil
}

func decodeImages(data []string) ([]*image.RGBA, error) {
	var out []*image.RGBA
	for i, s := range data {
		raw, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, fmt.Errorf("texture: frame %d: %w", i, err)
		}
		img, err := png.Decode(bytes.NewReader(raw))
		if err != nil {
			return nil, fmt.Errorf("texture: frame %d: %w", i, err)
		}
		out = append(out, toRGBA(img))
	}
	return out, nil
}

func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok {
		return rgba
	}
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)
	return rgba
}
