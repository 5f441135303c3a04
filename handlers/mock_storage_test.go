package handlers

import "mime/multipart"

type mockStorage struct {
	UploadCampaignImageFn func(file multipart.File, filename, contentType string) (string, error)
	UploadResourceFileFn  func(file multipart.File, filename, contentType string) (string, error)
	DeleteFileFn          func(objectPath string) error
	DeleteFileCalls       []string
	UploadCallCount       int
}

func newMockStorage() *mockStorage {
	return &mockStorage{
		DeleteFileCalls: []string{},
	}
}

func (m *mockStorage) UploadCampaignImage(file multipart.File, filename, contentType string) (string, error) {
	m.UploadCallCount++
	if m.UploadCampaignImageFn != nil {
		return m.UploadCampaignImageFn(file, filename, contentType)
	}
	return "https://storage.googleapis.com/test-bucket/campaigns/test_image.jpg", nil
}

func (m *mockStorage) UploadResourceFile(file multipart.File, filename, contentType string) (string, error) {
	m.UploadCallCount++
	if m.UploadResourceFileFn != nil {
		return m.UploadResourceFileFn(file, filename, contentType)
	}
	return "https://storage.googleapis.com/test-bucket/resources/test_file.pdf", nil
}

func (m *mockStorage) DeleteFile(objectPath string) error {
	m.DeleteFileCalls = append(m.DeleteFileCalls, objectPath)
	if m.DeleteFileFn != nil {
		return m.DeleteFileFn(objectPath)
	}
	return nil
}
