package utils

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"

	storage "github.com/supabase-community/storage-go"
)

func storageBucket() string {
	bucket := os.Getenv("SUPABASE_BUCKET")
	if bucket == "" {
		bucket = "uploads"
	}
	return bucket
}

func storageClient() *storage.Client {
	supabaseURL := os.Getenv("SUPABASE_URL")
	supabaseKey := os.Getenv("SUPABASE_KEY")
	return storage.NewClient(supabaseURL+"/storage/v1", supabaseKey, nil)
}

// UploadAudioToSupabase загружает mp3 в хранилище и возвращает публичный URL.
// Путь в бакете: audio/<filename>.
func UploadAudioToSupabase(data []byte, filename string, contentType string) (string, error) {
	supabaseURL := os.Getenv("SUPABASE_URL")
	objectPath := fmt.Sprintf("audio/%s", filename)

	options := storage.FileOptions{
		ContentType: &contentType,
	}

	_, err := storageClient().UploadFile(storageBucket(), objectPath, bytes.NewBuffer(data), options)
	if err != nil {
		return "", err
	}

	publicURL := fmt.Sprintf("%s/storage/v1/object/public/%s/%s", supabaseURL, storageBucket(), objectPath)
	return publicURL, nil
}

// CreateUploadLink выдаёт подписанный URL с токеном, по которому клиент
// сам делает PUT с байтами файла — двухфазный сценарий загрузки.
// Возвращает также публичный URL, под которым файл будет доступен.
func CreateUploadLink(filename string) (uploadURL string, publicURL string, err error) {
	supabaseURL := os.Getenv("SUPABASE_URL")
	objectPath := fmt.Sprintf("audio/%s", filename)

	resp, err := storageClient().CreateSignedUploadUrl(storageBucket(), objectPath)
	if err != nil {
		return "", "", err
	}

	uploadURL = resp.Url
	if !strings.HasPrefix(uploadURL, "http") {
		uploadURL = supabaseURL + "/storage/v1" + uploadURL
	}
	publicURL = fmt.Sprintf("%s/storage/v1/object/public/%s/%s", supabaseURL, storageBucket(), objectPath)
	return uploadURL, publicURL, nil
}

// DeleteFileFromSupabase принимает публичный URL и удаляет объект из хранилища.
func DeleteFileFromSupabase(publicURL string) error {
	if publicURL == "" {
		return nil
	}

	supabaseURL := os.Getenv("SUPABASE_URL")
	supabaseKey := os.Getenv("SUPABASE_KEY")
	if supabaseURL == "" || supabaseKey == "" {
		return fmt.Errorf("SUPABASE_URL или SUPABASE_KEY не настроены")
	}

	idx := strings.Index(publicURL, "/storage/v1/object/")
	if idx == -1 {
		return fmt.Errorf("не удалось определить путь объекта в URL: %s", publicURL)
	}

	rest := publicURL[idx+len("/storage/v1/object/"):]
	rest = strings.TrimPrefix(rest, "public/")

	// rest => "<bucket>/<path/to/object>"
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) < 2 {
		return fmt.Errorf("не удалось разобрать bucket/object из URL: %s", publicURL)
	}
	bucket := parts[0]
	object := parts[1]
	if qIdx := strings.Index(object, "?"); qIdx != -1 {
		object = object[:qIdx]
	}
	if u, err := url.PathUnescape(object); err == nil {
		object = u
	}

	deleteURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", strings.TrimRight(supabaseURL, "/"), bucket, object)

	req, err := http.NewRequest("DELETE", deleteURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+supabaseKey)
	req.Header.Set("apikey", supabaseKey)

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		return fmt.Errorf("не удалось удалить файл из хранилища: status=%d body=%s", resp.StatusCode, string(body))
	}
	return nil
}
