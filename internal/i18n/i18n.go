package i18n

import "strings"

// Translations keyed by language, then code. Portuguese is the app's primary
// language; English is the only alternate.
var translations = map[string]map[string]string{
	"pt": {
		"required":          "Obrigatório",
		"invalid_date":      "Data inválida",
		"must_be_positive":  "Deve ser positivo",
		"out_of_range":      "Fora do intervalo",
		"saved":             "Salvo com sucesso!",
		"deleted":           "Excluído com sucesso!",
		"save_failed":       "Erro ao salvar",
		"delete_failed":     "Erro ao excluir",
		"convert_ok":        "Orçamento convertido em venda com sucesso!",
		"convert_failed":    "Erro ao converter orçamento",
		"invalid_login":     "E-mail ou senha inválidos",
		"signup_failed":     "Não foi possível criar a conta",
		"meetings":          "Reuniões",
		"clients":           "Clientes",
		"sales":             "Vendas e Comissões",
		"quotes":            "Orçamentos",
		"reminders":         "Lembretes",
		"dashboard":         "Dashboard",
	},
	"en": {
		"required":          "Required",
		"invalid_date":      "Invalid date",
		"must_be_positive":  "Must be positive",
		"out_of_range":      "Out of range",
		"saved":             "Saved!",
		"deleted":           "Deleted!",
		"save_failed":       "Could not save",
		"delete_failed":     "Could not delete",
		"convert_ok":        "Quote converted into a sale!",
		"convert_failed":    "Could not convert quote",
		"invalid_login":     "Invalid e-mail or password",
		"signup_failed":     "Could not create the account",
		"meetings":          "Meetings",
		"clients":           "Clients",
		"sales":             "Sales & Commissions",
		"quotes":            "Quotes",
		"reminders":         "Reminders",
		"dashboard":         "Dashboard",
	},
}

// T resolves a translation code for the given language, falling back to the
// Portuguese entry, then to the code itself.
func T(lang, code string) string {
	if m, ok := translations[lang]; ok {
		if s, ok := m[code]; ok {
			return s
		}
	}
	if s, ok := translations["pt"][code]; ok {
		return s
	}
	return code
}

// DetectLanguage picks a supported language from an Accept-Language header.
func DetectLanguage(acceptLanguage string) string {
	al := strings.ToLower(acceptLanguage)
	for _, part := range strings.Split(al, ",") {
		tag := strings.TrimSpace(strings.SplitN(part, ";", 2)[0])
		if strings.HasPrefix(tag, "en") {
			return "en"
		}
		if strings.HasPrefix(tag, "pt") {
			return "pt"
		}
	}
	return "pt"
}
