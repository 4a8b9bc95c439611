package lf

import "go.uber.org/zap"

const (
	FieldModule     = "module"
	FieldRequestID  = "request_id"
	FieldTable      = "table"
	FieldTeamName   = "team_name"
	FieldJudgeName  = "judge_name"
	FieldTrack      = "track"
	FieldKind       = "submission_kind"
	FieldStoreMode  = "store_mode"
	FieldRows       = "rows"
	FieldTotalScore = "total_score"
)

func Module(module string) zap.Field {
	return zap.String(FieldModule, module)
}

func RequestID(id string) zap.Field {
	return zap.String(FieldRequestID, id)
}

func Table(name string) zap.Field {
	return zap.String(FieldTable, name)
}

func TeamName(name string) zap.Field {
	return zap.String(FieldTeamName, name)
}

func JudgeName(name string) zap.Field {
	return zap.String(FieldJudgeName, name)
}

func Track(name string) zap.Field {
	return zap.String(FieldTrack, name)
}

func Kind(kind string) zap.Field {
	return zap.String(FieldKind, kind)
}

func StoreMode(mode string) zap.Field {
	return zap.String(FieldStoreMode, mode)
}

func Rows(count int) zap.Field {
	return zap.Int(FieldRows, count)
}

func TotalScore(total float64) zap.Field {
	return zap.Float64(FieldTotalScore, total)
}
