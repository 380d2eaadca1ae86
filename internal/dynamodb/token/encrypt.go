package token

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"philcali.me/mealplanner/internal/data"
	"philcali.me/mealplanner/internal/exceptions"
)

type EncryptMode func(cipher.Block) (cipher.AEAD, error)

type EncryptionTokenMarshaler struct {
	Mode   EncryptMode
	Secret []byte
}

func NewGCM() *EncryptionTokenMarshaler {
	return NewGCMWithSecret(nil)
}

func NewGCMWithSecret(secret []byte) *EncryptionTokenMarshaler {
	return &EncryptionTokenMarshaler{
		Mode:   cipher.NewGCM,
		Secret: secret,
	}
}

type sealed struct {
	Nonce      []byte `json:"n"`
	Ciphertext []byte `json:"c"`
}

func toNextToken(lastKey map[string]types.AttributeValue) (data.NextToken, error) {
	token := make(data.NextToken, len(lastKey))
	for field, value := range lastKey {
		switch v := value.(type) {
		case *types.AttributeValueMemberS:
			token[field] = map[string]string{"S": v.Value}
		case *types.AttributeValueMemberN:
			token[field] = map[string]string{"N": v.Value}
		default:
			return nil, fmt.Errorf("unsupported key attribute %s of type %T", field, value)
		}
	}
	return token, nil
}

func fromNextToken(token data.NextToken) map[string]types.AttributeValue {
	lastKey := make(map[string]types.AttributeValue, len(token))
	for field, inner := range token {
		if s, ok := inner["S"]; ok {
			lastKey[field] = &types.AttributeValueMemberS{Value: s}
		} else if n, ok := inner["N"]; ok {
			lastKey[field] = &types.AttributeValueMemberN{Value: n}
		}
	}
	return lastKey
}

func (em *EncryptionTokenMarshaler) aead(scope string) (cipher.AEAD, error) {
	mac := hmac.New(sha256.New, em.Secret)
	mac.Write([]byte(scope))
	block, err := aes.NewCipher(mac.Sum(nil))
	if err != nil {
		return nil, err
	}
	return em.Mode(block)
}

func (em *EncryptionTokenMarshaler) Marshal(scope string, lastKey map[string]types.AttributeValue) ([]byte, error) {
	if len(lastKey) == 0 {
		return nil, nil
	}
	token, err := toNextToken(lastKey)
	if err != nil {
		return nil, err
	}
	plaintext, err := json.Marshal(token)
	if err != nil {
		return nil, err
	}
	aead, err := em.aead(scope)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, err
	}
	payload, err := json.Marshal(sealed{
		Nonce:      nonce,
		Ciphertext: aead.Seal(nil, nonce, plaintext, []byte(scope)),
	})
	if err != nil {
		return nil, err
	}
	encoded := make([]byte, base64.RawURLEncoding.EncodedLen(len(payload)))
	base64.RawURLEncoding.Encode(encoded, payload)
	return encoded, nil
}

func (em *EncryptionTokenMarshaler) Unmarshal(scope string, token []byte) (map[string]types.AttributeValue, error) {
	if len(token) == 0 {
		return nil, nil
	}
	invalid := exceptions.InvalidInput("The nextToken parameter is invalid.")
	payload := make([]byte, base64.RawURLEncoding.DecodedLen(len(token)))
	n, err := base64.RawURLEncoding.Decode(payload, token)
	if err != nil {
		return nil, invalid
	}
	var box sealed
	if err := json.Unmarshal(payload[:n], &box); err != nil {
		return nil, invalid
	}
	aead, err := em.aead(scope)
	if err != nil {
		return nil, err
	}
	if len(box.Nonce) != aead.NonceSize() {
		return nil, invalid
	}
	plaintext, err := aead.Open(nil, box.Nonce, box.Ciphertext, []byte(scope))
	if err != nil {
		return nil, invalid
	}
	var nextToken data.NextToken
	if err := json.Unmarshal(plaintext, &nextToken); err != nil {
		return nil, invalid
	}
	return fromNextToken(nextToken), nil
}
