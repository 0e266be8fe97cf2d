package tools

import (
	"image"
	"io"

	"coverpost_api/logs"

	"cloud.google.com/go/logging"
	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
)

// Reads the EXIF orientation tag and rewinds the file. Defaults to 1.
func TryFindExifOrientation(logger logs.Logger, file io.ReadSeeker) (int, error) {
	x, exifErr := exif.Decode(file)
	if exifErr != nil {
		logger.Log(logging.Entry{
			Severity: logging.Debug,
			Payload:  "No EXIF data, applying default image orientation.",
			Labels:   map[string]string{"error": exifErr.Error()},
		})
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		logger.Log(logging.Entry{
			Severity: logging.Error,
			Payload:  "Error resetting file pointer",
			Labels:   map[string]string{"error": err.Error()},
		})
		return 1, err
	}

	if exifErr != nil {
		return 1, nil
	}

	orientTag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1, nil
	}

	orientation, err := orientTag.Int(0)
	if err != nil {
		logger.Log(logging.Entry{
			Severity: logging.Warning,
			Payload:  "Warning reading orientation tag, applying default image orientation.",
			Labels:   map[string]string{"error": err.Error()},
		})
		return 1, nil
	}

	return orientation, nil
}

func CorrectImageOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.Transpose(img)
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.Transverse(img)
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}
