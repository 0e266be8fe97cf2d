package tools

import (
	"fmt"
	"image"
	"io"
	"net/http"
	"net/url"
	"os"

	"coverpost_api/logs"
	"coverpost_api/types"

	"github.com/disintegration/imaging"
)

func GetImageDimensions(img image.Image) (int, int) {
	return img.Bounds().Dx(), img.Bounds().Dy()
}

// Decodes the image at path and returns its displayed dimensions,
// i.e. after the EXIF orientation has been applied.
func MeasureImage(logger logs.Logger, path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	orientation, err := TryFindExifOrientation(logger, f)
	if err != nil {
		return 0, 0, err
	}

	img, err := imaging.Decode(f)
	if err != nil {
		return 0, 0, fmt.Errorf("error decoding image: %w", err)
	}

	width, height := GetImageDimensions(CorrectImageOrientation(img, orientation))
	return width, height, nil
}

// Sniffs the content type from the first 512 bytes of the file
func DetectContentType(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("error reading file: %v", err)
	}

	return http.DetectContentType(buf[:n]), nil
}

func FirebaseDownloadUrl(bucket, storagePath, downloadToken string) string {
	return types.FIREBASE_STORAGE_DOWNLOAD_URL + bucket + "/o/" + url.PathEscape(storagePath) + "?alt=media&token=" + downloadToken
}

// Joins folder and public id the way hosted assets are named
func AssetPath(folder, publicId string) string {
	if folder == "" {
		return publicId
	}
	return folder + "/" + publicId
}
