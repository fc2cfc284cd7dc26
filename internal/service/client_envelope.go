package service

import (
	"encoding/base64"

	"github.com/MKhiriev/legacy-shield/internal/crypto"
	"github.com/MKhiriev/legacy-shield/models"
)

// Conversions between the base64 wire fields of models.File and the byte
// slices of crypto.EncryptedFile. Malformed server data is reported as
// crypto.ErrDecryptionFailed, like any other tampering.

func b64(raw []byte) string {
	return base64.StdEncoding.EncodeToString(raw)
}

func unb64(s string) ([]byte, error) {
	raw, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, crypto.ErrDecryptionFailed
	}
	return raw, nil
}

func wrapFromFields(key, iv string) (crypto.WrappedKey, error) {
	ct, err := unb64(key)
	if err != nil {
		return crypto.WrappedKey{}, err
	}
	nonce, err := unb64(iv)
	if err != nil {
		return crypto.WrappedKey{}, err
	}
	return crypto.WrappedKey{Ciphertext: ct, Nonce: nonce}, nil
}

func ownerWrap(file models.File) (crypto.WrappedKey, error) {
	return wrapFromFields(file.OwnerEncryptedKey, file.OwnerIV)
}

func emergencyWrap(file models.File) (crypto.WrappedKey, error) {
	if !file.HasEmergencyWrap() {
		return crypto.WrappedKey{}, ErrNoEmergencyWrap
	}
	return wrapFromFields(*file.EmergencyEncryptedKey, *file.EmergencyIV)
}

func encryptedFromWire(file models.File, body []byte) (*crypto.EncryptedFile, error) {
	nonce, err := unb64(file.IV)
	if err != nil {
		return nil, err
	}
	tag, err := unb64(file.AuthTag)
	if err != nil {
		return nil, err
	}
	return &crypto.EncryptedFile{Ciphertext: body, Nonce: nonce, Tag: tag}, nil
}

func uploadFromEncrypted(fileID, name string, enc *crypto.EncryptedFile) models.FileUpload {
	upload := models.FileUpload{
		File: models.File{
			FileID:            fileID,
			Name:              name,
			Size:              int64(len(enc.Ciphertext)),
			IV:                b64(enc.Nonce),
			AuthTag:           b64(enc.Tag),
			OwnerEncryptedKey: b64(enc.Owner.Ciphertext),
			OwnerIV:           b64(enc.Owner.Nonce),
		},
		Body: b64(enc.Ciphertext),
	}

	if enc.Emergency != nil {
		key, iv := b64(enc.Emergency.Ciphertext), b64(enc.Emergency.Nonce)
		upload.EmergencyEncryptedKey = &key
		upload.EmergencyIV = &iv
	}

	return upload
}
