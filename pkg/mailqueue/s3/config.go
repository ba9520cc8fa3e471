package s3

// Config contains S3 snapshot store configuration.
type Config struct {
	Bucket      string `env:"MAILQUEUE_S3_BUCKET,required"`
	Region      string `env:"MAILQUEUE_S3_REGION,required"`
	Key         string `env:"MAILQUEUE_S3_KEY" envDefault:"mailqueue/snapshot.json"`
	AccessKeyID string `env:"MAILQUEUE_S3_ACCESS_KEY_ID"`
	SecretKey   string `env:"MAILQUEUE_S3_SECRET_KEY"`
	// Endpoint targets S3-compatible services like MinIO or R2.
	Endpoint string `env:"MAILQUEUE_S3_ENDPOINT"`
	// ForcePathStyle is required by most S3-compatible services.
	ForcePathStyle bool `env:"MAILQUEUE_S3_FORCE_PATH_STYLE" envDefault:"false"`
}
