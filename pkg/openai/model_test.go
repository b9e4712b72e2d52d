package openai

import "testing"

func TestModelName(t *testing.T) {
	tests := []struct {
		model  Model
		want   string
		family Family
	}{
		{GPT3Davinci, "text-davinci-003", FamilyGPT3},
		{GPT3Curie, "text-curie-001", FamilyGPT3},
		{GPT3Babbage, "text-babbage-001", FamilyGPT3},
		{GPT3Ada, "text-ada-001", FamilyGPT3},
		{CodexDavinci, "code-davinci-002", FamilyCodex},
		{CodexCushman, "code-cushman-001", FamilyCodex},
		{EditDavinci, "text-davinci-edit-001", FamilyEdit},
		{EditCodeDavinci, "code-davinci-edit-001", FamilyEdit},
		{ChatGPT35Turbo, "gpt-3.5-turbo", FamilyChat},
		{ChatGPT35Turbo0301, "gpt-3.5-turbo-0301", FamilyChat},
		{ChatGPT4, "gpt-4", FamilyChat},
		{ChatGPT4_32K, "gpt-4-32k", FamilyChat},
		{EmbeddingAda002, "text-embedding-ada-002", FamilyEmbedding},
		{Custom("ft:my-model"), "ft:my-model", FamilyCustom},
	}

	for _, tt := range tests {
		if got := tt.model.ModelName(); got != tt.want {
			t.Errorf("Expected %s, got %s", tt.want, got)
		}
		if got := tt.model.Family(); got != tt.family {
			t.Errorf("%s: expected family %s, got %s", tt.want, tt.family, got)
		}
	}
}

func TestModels_NonEmptyAndUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, m := range Models() {
		name := m.ModelName()
		if name == "" {
			t.Errorf("Model of family %s has empty name", m.Family())
		}
		if seen[name] {
			t.Errorf("Duplicate model name %s", name)
		}
		seen[name] = true
	}
}

func TestParseModel(t *testing.T) {
	if m := ParseModel("gpt-3.5-turbo"); m != ChatGPT35Turbo {
		t.Errorf("Expected ChatGPT35Turbo, got %#v", m)
	}
	if m := ParseModel("text-davinci-edit-001"); m.Family() != FamilyEdit {
		t.Errorf("Expected edit family, got %s", m.Family())
	}

	m := ParseModel("gpt-5-preview")
	if m.Family() != FamilyCustom {
		t.Errorf("Expected custom family, got %s", m.Family())
	}
	if m.ModelName() != "gpt-5-preview" {
		t.Errorf("Expected name passed through, got %s", m.ModelName())
	}
}
