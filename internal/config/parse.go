package config

import (
	"bytes"
	"errors"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/Kargones/logroute/internal/pkg/apperrors"
)

// Parse разбирает документ из YAML.
//
// Ошибки синтаксиса YAML, неизвестные ключи и нарушения схемы возвращаются
// как CONFIG.SYNTAX. Отсутствующий root.level заменяется на DefaultRootLevel.
// Переменные окружения здесь не читаются, см. Load.
func Parse(data []byte) (*Document, error) {
	var raw any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigSyntax, "некорректный YAML", err)
	}
	if raw == nil {
		// Пустой документ допустим: корень info без аппендеров
		raw = map[string]any{}
	}
	if err := validateSchema(raw); err != nil {
		return nil, apperrors.NewAppError(apperrors.ErrConfigSyntax, "документ не соответствует схеме", err)
	}

	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, apperrors.NewAppError(apperrors.ErrConfigSyntax, "некорректный документ", err)
	}

	doc.applyDefaults()
	return &doc, nil
}
