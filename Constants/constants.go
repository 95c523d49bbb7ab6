package Constants

// WhatsappGoService is the local go-whatsapp gateway used for outbound
// patient messages.
var WhatsappGoService = "http://localhost:3000"
