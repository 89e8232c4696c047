// Package storage signs direct uploads to the image blob store.
package storage

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"

	"github.com/cars-g/reporting-api/internal/core/domain"
	"github.com/cars-g/reporting-api/internal/core/ports"
)

// folderRoot prefixes every upload folder.
const folderRoot = "cars-g"

// allowedFolders maps the public folder names to their blob store paths.
var allowedFolders = map[string]string{
	"reports": folderRoot + "/reports",
	"proof":   folderRoot + "/proof",
}

// CloudinarySigner implements ports.UploadSigner.
type CloudinarySigner struct {
	cld          *cloudinary.Cloudinary
	uploadPreset string
}

// NewCloudinarySigner validates the account credentials and returns a signer.
func NewCloudinarySigner(cloudName, apiKey, apiSecret, uploadPreset string) (*CloudinarySigner, error) {
	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: %w", err)
	}
	return &CloudinarySigner{cld: cld, uploadPreset: uploadPreset}, nil
}

// Sign returns the parameters for one direct upload into folder.
func (s *CloudinarySigner) Sign(folder string, at time.Time) (*ports.UploadSignature, error) {
	path, ok := allowedFolders[folder]
	if !ok {
		return nil, fmt.Errorf("%w: folder must be one of reports, proof", domain.ErrInvalidInput)
	}

	ts := at.Unix()
	params := url.Values{}
	params.Set("timestamp", strconv.FormatInt(ts, 10))
	params.Set("folder", path)
	if s.uploadPreset != "" {
		params.Set("upload_preset", s.uploadPreset)
	}

	signature, err := api.SignParameters(params, s.cld.Config.Cloud.APISecret)
	if err != nil {
		return nil, fmt.Errorf("cloudinary: sign upload: %w", err)
	}

	return &ports.UploadSignature{
		Timestamp:    ts,
		Signature:    signature,
		APIKey:       s.cld.Config.Cloud.APIKey,
		CloudName:    s.cld.Config.Cloud.CloudName,
		Folder:       path,
		UploadPreset: s.uploadPreset,
	}, nil
}
