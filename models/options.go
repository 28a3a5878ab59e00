package models

// Closed option lists for complaint fields. The intake front end shows these
// as dropdowns and the API rejects any value outside the list, so the same
// slices serve as both choices and validation.

// Complaint statuses.
const (
	StatusPending    = "Pendente"
	StatusMonitoring = "Em monitoramento"
	StatusCompleted  = "Concluída"
)

var Statuses = []string{StatusPending, StatusMonitoring, StatusCompleted}

// Origins lists how a complaint can reach the department.
var Origins = []string{
	"Pessoalmente",
	"Telefone",
	"Whatsapp",
	"Ministério Publico",
	"Administração",
	"Ouvidoria",
	"Disk Denuncia",
}

// Categories lists the complaint types.
var Categories = []string{
	"Urbana",
	"Ambiental",
	"Urbana e Ambiental",
}

// Neighborhoods lists the municipal districts served by the department.
var Neighborhoods = []string{
	"AGAMENON MAGALHÃES", "ALTO DO MOURA", "CAIUCÁ", "CEDRO", "CENTENÁRIO",
	"CIDADE ALTA", "CIDADE JARDIM", "DEPUTADO JOSÉ ANTÔNIO LIBERATO",
	"DISTRITO INDUSTRIAL", "DIVINÓPOLIS", "INDIANÓPOLIS", "JARDIM BOA VISTA",
	"JARDIM PANORAMA", "JOÃO MOTA", "JOSÉ CARLOS DE OLIVEIRA", "KENNEDY",
	"LUIZ GONZAGA", "MANOEL BEZERRA LOPES", "MARIA AUXILIADORA",
	"MAURÍCIO DE NASSAU", "MORRO BOM JESUS", "NINA LIBERATO",
	"NOSSA SENHORA DAS DORES", "NOSSA SENHORA DAS GRAÇAS", "NOVA CARUARU",
	"PETRÓPOLIS", "PINHEIRÓPOLIS", "RENDEIRAS", "RIACHÃO", "SALGADO",
	"SANTA CLARA", "SANTA ROSA", "SÃO FRANCISCO", "SÃO JOÃO DA ESCÓCIA",
	"SÃO JOSÉ", "SERRAS DO VALE", "SEVERINO AFONSO", "UNIVERSITÁRIO",
	"VASSOURAL", "VILA PADRE INÁCIO", "VERDE", "VILA ANDORINHA", "XIQUE-XIQUE",
}

// Zones lists the city zones and districts.
var Zones = []string{
	"NORTE", "SUL", "LESTE", "OESTE", "CENTRO",
	"1° DISTRITO", "2° DISTRITO", "3° DISTRITO", "4° DISTRITO", "Zona rural",
}

// Inspectors lists the staff authorized to receive complaints.
var Inspectors = []string{
	"EDVALDO WILSON BEZERRA DA SILVA - 000.323",
	"PATRICIA MIRELLY BEZERRA CAMPOS - 000.332",
	"RAIANY NAYARA DE LIMA - 000.362",
	"SUELLEN BEZERRA DO NASCIMENTO - 000.417",
}

// ValidOption reports whether value is a member of the given option list.
func ValidOption(options []string, value string) bool {
	for _, o := range options {
		if o == value {
			return true
		}
	}
	return false
}
