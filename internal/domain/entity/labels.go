package entity

// Tone color semántico que la capa de presentación traduce a su paleta.
type Tone string

const (
	TonePrimary Tone = "primary"
	ToneSuccess Tone = "success"
	ToneWarning Tone = "warning"
	ToneError   Tone = "error"
	ToneNeutral Tone = "neutral"
)

// Badge etiqueta visible + tono.
type Badge struct {
	Label string `json:"label"`
	Tone  Tone   `json:"tone"`
}

// Las etiquetas están en portugués, idioma de la app móvil.

func (t MaterialType) Label() string {
	switch t {
	case MaterialTypeRawMaterial:
		return "Matéria-Prima"
	case MaterialTypeFinishedProduct:
		return "Produto Acabado"
	case MaterialTypeConsumable:
		return "Consumível"
	}
	return string(t)
}

// StockBadge badge de nivel de stock del material.
func (m Material) StockBadge() Badge {
	if m.IsLowStock() {
		return Badge{Label: "Estoque Baixo", Tone: ToneError}
	}
	return Badge{Label: "Estoque OK", Tone: ToneSuccess}
}

func (s OrderStatus) Badge() Badge {
	switch s {
	case OrderStatusPending:
		return Badge{Label: "Pendente", Tone: ToneWarning}
	case OrderStatusInProgress:
		return Badge{Label: "Em Produção", Tone: TonePrimary}
	case OrderStatusCompleted:
		return Badge{Label: "Concluída", Tone: ToneSuccess}
	case OrderStatusCancelled:
		return Badge{Label: "Cancelada", Tone: ToneError}
	}
	return Badge{Label: string(s), Tone: ToneNeutral}
}

func (p OrderPriority) Badge() Badge {
	switch p {
	case OrderPriorityLow:
		return Badge{Label: "Baixa", Tone: ToneNeutral}
	case OrderPriorityNormal:
		return Badge{Label: "Normal", Tone: TonePrimary}
	case OrderPriorityHigh:
		return Badge{Label: "Alta", Tone: ToneWarning}
	case OrderPriorityUrgent:
		return Badge{Label: "Urgente", Tone: ToneError}
	}
	return Badge{Label: string(p), Tone: ToneNeutral}
}

func (t InspectionType) Label() string {
	switch t {
	case InspectionTypeIncoming:
		return "Recebimento"
	case InspectionTypeInProcess:
		return "Em Processo"
	case InspectionTypeFinal:
		return "Final"
	case InspectionTypeAudit:
		return "Auditoria"
	}
	return string(t)
}

func (s InspectionStatus) Badge() Badge {
	switch s {
	case InspectionStatusApproved:
		return Badge{Label: "Aprovado", Tone: ToneSuccess}
	case InspectionStatusRejected:
		return Badge{Label: "Rejeitado", Tone: ToneError}
	case InspectionStatusConditional:
		return Badge{Label: "Condicional", Tone: ToneWarning}
	}
	return Badge{Label: string(s), Tone: ToneNeutral}
}
