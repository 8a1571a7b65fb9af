package domain

// Plan is a user's subscription tier.
type Plan string

const (
	PlanFree     Plan = "free"
	PlanMonthly  Plan = "monthly"
	PlanLifetime Plan = "lifetime"
)

// Paid reports whether p lifts the export quota.
func (p Plan) Paid() bool {
	return p == PlanMonthly || p == PlanLifetime
}

// SubscriptionStatus is the lifecycle state of a Subscription.
type SubscriptionStatus string

const (
	SubscriptionPending  SubscriptionStatus = "pending"
	SubscriptionActive   SubscriptionStatus = "active"
	SubscriptionCanceled SubscriptionStatus = "canceled"
)

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF FileType = "pdf"
	FileTypeJPG FileType = "jpg"
	FileTypePNG FileType = "png"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF: "application/pdf",
	FileTypeJPG: "image/jpeg",
	FileTypePNG: "image/png",
}

// AllowedExtensions maps lowercase file extensions to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
}

// AllowedContentTypes maps sniffed content types to FileType.
var AllowedContentTypes = map[string]FileType{
	"application/pdf": FileTypePDF,
	"image/jpeg":      FileTypeJPG,
	"image/png":       FileTypePNG,
}

// AssetKind names what an uploaded image is used for.
type AssetKind string

const (
	AssetLogo      AssetKind = "logo"
	AssetSignature AssetKind = "signature"
)

// Valid reports whether k is a known asset kind.
func (k AssetKind) Valid() bool {
	return k == AssetLogo || k == AssetSignature
}
