package backend

import (
	"bytes"

	jsoniter "github.com/json-iterator/go"
	"github.com/ledgerline/crm-intelligence-api/internal/domain"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type validatable interface {
	Validate() error
}

// decodeOne aceita um objeto ou uma lista (usa o primeiro item). Resposta nula ou lista vazia retorna found=false.
func decodeOne(procedure string, payload []byte, dest any) (found bool, err error) {
	payload = bytes.TrimSpace(payload)
	if isNull(payload) {
		return false, nil
	}

	if payload[0] == '[' {
		var items []jsoniter.RawMessage
		if err := json.Unmarshal(payload, &items); err != nil {
			return false, &domain.DecodeError{Call: procedure, Err: err}
		}
		if len(items) == 0 {
			return false, nil
		}
		payload = items[0]
	}

	if err := json.Unmarshal(payload, dest); err != nil {
		return false, &domain.DecodeError{Call: procedure, Err: err}
	}

	if v, ok := dest.(validatable); ok {
		if err := v.Validate(); err != nil {
			return false, &domain.DecodeError{Call: procedure, Err: err}
		}
	}

	return true, nil
}

// decodeList decodifica uma lista validando cada item; resposta nula vira lista vazia
func decodeList[T validatable](procedure string, payload []byte) ([]T, error) {
	payload = bytes.TrimSpace(payload)
	if isNull(payload) {
		return []T{}, nil
	}

	var items []T
	if err := json.Unmarshal(payload, &items); err != nil {
		return nil, &domain.DecodeError{Call: procedure, Err: err}
	}

	for i, item := range items {
		if err := item.Validate(); err != nil {
			return nil, &domain.DecodeError{Call: procedure, Err: errors.Wrapf(err, "item %d", i)}
		}
	}

	if items == nil {
		items = []T{}
	}

	return items, nil
}

func isNull(payload []byte) bool {
	return len(payload) == 0 || bytes.Equal(payload, []byte("null"))
}
