package domain

import (
	"bytes"

	jsoniter "github.com/json-iterator/go"
)

// AmountInput guarda o valor monetário como o usuário digitou, seja string ou número JSON.
// A validação acontece no serviço, para que um valor inválido seja rejeitado antes de
// qualquer gravação.
type AmountInput string

func (a *AmountInput) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AmountInput(s)
		return nil
	}

	*a = AmountInput(data)
	return nil
}

func (a AmountInput) String() string {
	return string(a)
}
