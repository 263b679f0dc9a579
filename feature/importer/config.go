package importer

// Config holds configuration for list imports.
type Config struct {
	// MaxUploadMB caps the size of an uploaded export document.
	MaxUploadMB int `mapstructure:"max_upload_mb" default:"16"`
	// Archive stores every uploaded document in object storage.
	Archive bool `mapstructure:"archive" default:"true"`
	// ArchivePrefix is the object key prefix for archived documents.
	ArchivePrefix string `mapstructure:"archive_prefix" default:"mal"`
}

func (c Config) maxUploadBytes() int64 {
	if c.MaxUploadMB <= 0 {
		return 16 << 20
	}
	return int64(c.MaxUploadMB) << 20
}
