package domain

// Business templates used to bootstrap a tenant that has never been
// configured. These are illustrative presets: distinct knowledge bases,
// quick responses, and escalation keywords per business type. Templates are
// immutable; creating a tenant from one always goes through Clone.

// DefaultTemplateID is the template applied to unknown tenants on their
// first message.
const DefaultTemplateID = "restaurante"

// templateOrder fixes the listing order of templates for the /templates
// endpoint. Go maps are unordered, so the order lives here.
var templateOrder = []string{"restaurante", "tienda", "inmobiliaria"}

var businessTemplates = map[string]TenantConfig{
	"restaurante": {
		BusinessType: "Restaurante",
		KnowledgeBase: `INFORMACIÓN DEL NEGOCIO:
- Horario: Lunes a Domingo 13:00-16:00 y 20:00-23:00
- Especialidad: Cocina mediterránea
- Precio medio: 25-35€ por persona
- Aceptamos reservas: Sí, llamar al teléfono o por WhatsApp
- Menú del día: Sí, 15€ (L-V mediodía)
- Terraza: Disponible
- Parking: Parking público a 100m

PREGUNTAS FRECUENTES:
- ¿Tenéis menú vegano? Sí, varios platos veganos disponibles
- ¿Se puede pagar con tarjeta? Sí, aceptamos todas las tarjetas
- ¿Hacéis para llevar? Sí, pedidos por teléfono o WhatsApp`,
		AutoResponses: []AutoResponse{
			{Trigger: "hola", Reply: "¡Hola! 👋 Bienvenido a [Nombre Restaurante]. ¿En qué puedo ayudarte?"},
			{Trigger: "horario", Reply: "Abrimos de Lunes a Domingo: 13:00-16:00 y 20:00-23:00"},
			{Trigger: "precio", Reply: "Nuestro precio medio es de 25-35€ por persona. Tenemos menú del día a 15€ (L-V mediodía)."},
			{Trigger: "reserva", Reply: "Para reservar, por favor indícame: fecha, hora y número de personas. O llama al [TELÉFONO]"},
		},
		EscalationKeywords: []string{"queja", "problema", "gerente", "reclamación", "mal servicio"},
	},
	"tienda": {
		BusinessType: "Tienda/Ecommerce",
		KnowledgeBase: `INFORMACIÓN DEL NEGOCIO:
- Horario: L-V 10:00-14:00 y 17:00-20:00, Sábados 10:00-14:00
- Productos: [Especificar categoría]
- Envíos: Toda España, 24-48h
- Envío gratis: Pedidos >50€
- Devoluciones: 30 días
- Formas de pago: Tarjeta, PayPal, Bizum, transferencia

PREGUNTAS FRECUENTES:
- ¿Cuánto tarda el envío? 24-48h laborables
- ¿Puedo devolver? Sí, 30 días sin preguntas
- ¿Tenéis tienda física? Sí, en [DIRECCIÓN]`,
		AutoResponses: []AutoResponse{
			{Trigger: "hola", Reply: "¡Hola! 👋 Bienvenido a [Nombre Tienda]. ¿Buscas algo en concreto?"},
			{Trigger: "envío", Reply: "Envíos en 24-48h a toda España. Gratis en pedidos superiores a 50€."},
			{Trigger: "horario", Reply: "L-V 10:00-14:00 y 17:00-20:00, Sábados 10:00-14:00"},
			{Trigger: "precio", Reply: "¿Qué producto te interesa? Te paso el precio al momento."},
		},
		EscalationKeywords: []string{"pedido perdido", "no ha llegado", "defectuoso", "roto", "reclamación"},
	},
	"inmobiliaria": {
		BusinessType: "Agencia Inmobiliaria",
		KnowledgeBase: `INFORMACIÓN DEL NEGOCIO:
- Servicios: Compra, venta, alquiler de propiedades
- Zona de actuación: [CIUDAD/ZONA]
- Horario oficina: L-V 9:00-14:00 y 16:00-19:00
- Comisiones: Transparentes, consultar
- Visitas: Con cita previa

PROCESO:
1. Cliente indica qué busca (compra/alquiler, zona, presupuesto)
2. Le enviamos propiedades disponibles
3. Coordinamos visita
4. Asesoramiento durante todo el proceso

PREGUNTAS FRECUENTES:
- ¿Cobráis por enseñar pisos? No, las visitas son gratuitas
- ¿Cuánto son las comisiones? Depende del servicio, te informamos sin compromiso`,
		AutoResponses: []AutoResponse{
			{Trigger: "hola", Reply: "¡Hola! 👋 Soy el asistente de [Inmobiliaria]. ¿Buscas comprar, alquilar o vender?"},
			{Trigger: "horario", Reply: "Nuestra oficina abre L-V de 9:00-14:00 y 16:00-19:00"},
			{Trigger: "visita", Reply: "Para coordinar una visita, indícame: ¿qué propiedad te interesa y tu disponibilidad horaria?"},
		},
		EscalationKeywords: []string{"urgente", "contrato", "problemas", "abogado", "legal"},
	},
}

// TemplateIDs returns the template identifiers in their fixed listing order.
func TemplateIDs() []string {
	out := make([]string, len(templateOrder))
	copy(out, templateOrder)
	return out
}

// Template returns a deep copy of the named template, so the caller can
// mutate the result freely. The second return is false for unknown ids.
func Template(id string) (TenantConfig, bool) {
	t, ok := businessTemplates[id]
	if !ok {
		return TenantConfig{}, false
	}
	return t.Clone(), true
}
