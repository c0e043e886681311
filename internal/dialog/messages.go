package dialog

const (
	greetingMorning   = "Bom dia"
	greetingAfternoon = "Boa tarde"
	greetingEvening   = "Boa noite"

	welcomeTemplate = `%s! 👋 Bem-vindo(a)!

Você é cliente nosso?

✅ Sou cliente
❌ Não sou cliente`

	msgAskPersonType = `Você é Pessoa Física ou Jurídica?

👤 Pessoa Física
🏢 Pessoa Jurídica`

	msgIsCustomerInvalid = `❌ Por favor, responda com "Sou cliente" ou "Não sou cliente"`
	msgPersonTypeInvalid = `❌ Por favor, responda com "Pessoa Física" ou "Pessoa Jurídica"`

	msgAskIndividualID   = "Por favor, informe seu CPF (formato: 000.000.000-00)"
	msgAskOrganizationID = "Por favor, informe seu CNPJ (formato: 00.000.000/0000-00)"

	documentAcceptedTemplate = "✅ %s validado: %s\n\nQual é o seu nome?"
	documentRejectedTemplate = "❌ %s inválido. Por favor, tente novamente."

	msgNameTooShort = "❌ Por favor, informe um nome válido (mínimo 3 caracteres)"

	customerMenuTemplate = `✅ Obrigado pelas informações!

👋 Olá %s. Escolha uma das opções:

1️⃣ Financeiro
2️⃣ Suporte
3️⃣ Novas contratações
4️⃣ Cancelamento
5️⃣ Fale com um atendente
6️⃣ Encerre o atendimento`

	nonCustomerMenuTemplate = `✅ Obrigado pelas informações!

👋 Olá %s. Escolha uma das opções:

1️⃣ Fale com a equipe de vendas
2️⃣ Dúvidas sobre planos
3️⃣ Fale com um atendente
4️⃣ Encerre o atendimento`

	msgCustomerMenuInvalid    = "❌ Opção inválida (1-6)"
	msgNonCustomerMenuInvalid = "❌ Opção inválida (1-4)"

	msgHandoff  = "👤 Conectando com um atendente..."
	msgFarewell = "👋 Obrigado por entrar em contato! Até logo!"

	msgUnknownStep = "Estado desconhecido. Iniciando..."
)

type menuOption struct {
	text   string
	intent Intent
}

var customerMenu = map[string]menuOption{
	"1": {text: "💰 Você escolheu **Financeiro**. Direcionando..."},
	"2": {text: "🛠️ Você escolheu **Suporte**. Direcionando..."},
	"3": {text: "📝 Você escolheu **Novas Contratações**. Direcionando..."},
	"4": {text: "⚠️ Você escolheu **Cancelamento**. Direcionando..."},
	"5": {text: msgHandoff, intent: IntentHandoff},
	"6": {text: msgFarewell, intent: IntentEndSession},
}

var nonCustomerMenu = map[string]menuOption{
	"1": {text: "🚀 Você escolheu **Vendas**. Direcionando..."},
	"2": {text: "❓ Você escolheu **Planos**. Direcionando..."},
	"3": {text: msgHandoff, intent: IntentHandoff},
	"4": {text: msgFarewell, intent: IntentEndSession},
}
