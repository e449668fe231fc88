package db

import (
	"fmt"
	"strings"

	"github.com/bifrost-platform/asset-info-v2/models"
)

// FuzzySource exposes an enum list to fuzzy matching as "<value>_<description>".
type FuzzySource models.EnumInfoList

func (self FuzzySource) Len() int {
	return len(self)
}

func (self FuzzySource) String(i int) string {
	return fmt.Sprintf("%s_%s", self[i].Value, strings.Replace(string(self[i].Description), " ", "_", -1))
}

func NewFuzzySource(list models.EnumInfoList) FuzzySource {
	return FuzzySource(list)
}
