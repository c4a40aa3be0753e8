package stages

import (
	"image"

	"gocv.io/x/gocv"

	"docprep/internal/raster"
)

// Sharpen convolves with a normalized high-boost kernel. The strong tier
// uses a wider 5x5 kernel for severely blurred input. Callers must not
// sharpen noisy images; the kernel amplifies whatever high-frequency
// content is present.
func Sharpen(src gocv.Mat, strength SharpenStrength) (gocv.Mat, error) {
	if err := raster.ValidateGray(src, "Sharpen"); err != nil {
		return gocv.NewMat(), err
	}

	kernel := sharpenKernel(strength)
	defer kernel.Close()

	dst := gocv.NewMat()
	gocv.Filter2D(src, &dst, -1, kernel, image.Pt(-1, -1), 0, gocv.BorderDefault)

	return dst, nil
}

// sharpenKernel builds the convolution kernel. Both kernels sum to one so
// flat regions keep their level.
func sharpenKernel(strength SharpenStrength) gocv.Mat {
	if strength == SharpenStrong {
		kernel := gocv.NewMatWithSize(5, 5, gocv.MatTypeCV32F)
		for y := 0; y < 5; y++ {
			for x := 0; x < 5; x++ {
				if y == 2 && x == 2 {
					kernel.SetFloatAt(y, x, 25)
				} else {
					kernel.SetFloatAt(y, x, -1)
				}
			}
		}
		return kernel
	}

	kernel := gocv.NewMatWithSize(3, 3, gocv.MatTypeCV32F)
	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			switch {
			case y == 1 && x == 1:
				kernel.SetFloatAt(y, x, 5)
			case y == 1 || x == 1:
				kernel.SetFloatAt(y, x, -1)
			default:
				kernel.SetFloatAt(y, x, 0)
			}
		}
	}
	return kernel
}
