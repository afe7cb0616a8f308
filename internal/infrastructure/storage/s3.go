// Package storage guarda los documentos de clientes (foto de cédula) en un
// bucket S3 o compatible (MinIO y similares vía endpoint propio).
package storage

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/tu-usuario/prestamos-pro/pkg/config"
)

// S3Storage adaptador de almacenamiento de objetos.
type S3Storage struct {
	client *s3.S3
	bucket string
}

// NewS3Storage construye el adaptador. Con Endpoint definido usa path-style,
// necesario para servicios compatibles fuera de AWS.
func NewS3Storage(cfg config.S3Config) (*S3Storage, error) {
	awsCfg := aws.NewConfig().WithRegion(cfg.Region)
	if cfg.AccessKey != "" {
		awsCfg = awsCfg.WithCredentials(credentials.NewStaticCredentials(cfg.AccessKey, cfg.SecretKey, ""))
	}
	if cfg.Endpoint != "" {
		awsCfg = awsCfg.WithEndpoint(cfg.Endpoint).WithS3ForcePathStyle(true)
	}
	sess, err := session.NewSession(awsCfg)
	if err != nil {
		return nil, fmt.Errorf("crear sesión S3: %w", err)
	}
	return &S3Storage{client: s3.New(sess), bucket: cfg.Bucket}, nil
}

// Upload sube un objeto bajo la llave dada.
func (s *S3Storage) Upload(ctx context.Context, key, contentType string, body io.ReadSeeker) error {
	_, err := s.client.PutObjectWithContext(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        body,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return fmt.Errorf("subir objeto: %w", err)
	}
	return nil
}

// Download devuelve el contenido y el content-type del objeto.
// El caller debe cerrar el reader.
func (s *S3Storage) Download(ctx context.Context, key string) (io.ReadCloser, string, error) {
	out, err := s.client.GetObjectWithContext(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, "", fmt.Errorf("descargar objeto: %w", err)
	}
	return out.Body, aws.StringValue(out.ContentType), nil
}

// Delete elimina el objeto.
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteObjectWithContext(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("eliminar objeto: %w", err)
	}
	return nil
}
