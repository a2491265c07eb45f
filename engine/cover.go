package engine

// CoveredTextureScale returns the UV scale that makes an image cover a viewport of the
// given aspect without distortion. The axis that would overflow is scaled below 1 and the
// other stays 1. When target is non-nil the result is also written into it.
//
// Parameters:
//   - imageWidth: image width in pixels
//   - imageHeight: image height in pixels
//   - aspect: viewport width / height
//   - target: optional destination
//
// Returns:
//   - [2]float32: the UV scale
func CoveredTextureScale(imageWidth, imageHeight int, aspect float32, target *[2]float32) [2]float32 {
	scale := [2]float32{1, 1}
	if imageWidth > 0 && imageHeight > 0 && aspect > 0 {
		imageAspect := float32(imageWidth) / float32(imageHeight)
		if aspect < imageAspect {
			scale[0] = aspect / imageAspect
		} else {
			scale[1] = imageAspect / aspect
		}
	}
	if target != nil {
		*target = scale
	}
	return scale
}

// CoveredUVTransform returns the column-major 3x3 matrix that scales UVs about the image
// center, (uv - 0.5) * scale + 0.5.
func CoveredUVTransform(scale [2]float32) [9]float32 {
	return [9]float32{
		scale[0], 0, 0,
		0, scale[1], 0,
		0.5 - 0.5*scale[0], 0.5 - 0.5*scale[1], 1,
	}
}
