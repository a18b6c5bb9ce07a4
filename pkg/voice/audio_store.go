package voice

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
)

// AudioStore holds generated call prompts until the telephony provider
// fetches them through the audio-serving endpoint.
type AudioStore interface {
	Save(filename string, data []byte) error
	Load(filename string) ([]byte, error)
	Delete(filename string) error
}

type localAudioStore struct {
	dir string
}

func NewLocalAudioStore(dir string) (AudioStore, error) {
	if dir == "" {
		dir = "./storage/audio"
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create audio directory: %w", err)
	}
	return &localAudioStore{dir: dir}, nil
}

func (s *localAudioStore) Save(filename string, data []byte) error {
	return os.WriteFile(filepath.Join(s.dir, filename), data, 0o644)
}

func (s *localAudioStore) Load(filename string) ([]byte, error) {
	return os.ReadFile(filepath.Join(s.dir, filename))
}

func (s *localAudioStore) Delete(filename string) error {
	err := os.Remove(filepath.Join(s.dir, filename))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

type s3AudioStore struct {
	client     *s3.S3
	session    *session.Session
	bucketName string
	prefix     string
}

// NewS3AudioStore stores call audio in S3 for deployments where the webhook
// host and the reconciler run on separate machines.
func NewS3AudioStore() (AudioStore, error) {
	sess, err := session.NewSession(&aws.Config{
		Region: aws.String(os.Getenv("AWS_REGION")),
		Credentials: credentials.NewStaticCredentials(
			os.Getenv("AWS_ACCESS_KEY_ID"),
			os.Getenv("AWS_SECRET_ACCESS_KEY"),
			"",
		),
	})
	if err != nil {
		return nil, err
	}

	return &s3AudioStore{
		client:     s3.New(sess),
		session:    sess,
		bucketName: os.Getenv("AWS_BUCKET_NAME"),
		prefix:     "call-audio/",
	}, nil
}

func (s *s3AudioStore) Save(filename string, data []byte) error {
	uploader := s3manager.NewUploader(s.session)

	_, err := uploader.Upload(&s3manager.UploadInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(s.prefix + filename),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("audio/mpeg"),
	})

	return err
}

func (s *s3AudioStore) Load(filename string) ([]byte, error) {
	out, err := s.client.GetObject(&s3.GetObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.prefix + filename),
	})
	if err != nil {
		return nil, err
	}
	defer out.Body.Close()

	return io.ReadAll(out.Body)
}

func (s *s3AudioStore) Delete(filename string) error {
	_, err := s.client.DeleteObject(&s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(s.prefix + filename),
	})
	return err
}
