package models

// UseCase 条款生成的用例，对应标准文本中的一个章节
type UseCase string

const (
	UseCaseScope        UseCase = "scope"
	UseCaseDefinitions  UseCase = "definitions"
	UseCaseRequirements UseCase = "requirements"
	UseCaseTestMethods  UseCase = "test_methods"
)

// UseCases 全部合法用例，按标准章节顺序排列
var UseCases = []UseCase{
	UseCaseScope,
	UseCaseDefinitions,
	UseCaseRequirements,
	UseCaseTestMethods,
}

// Valid 判断用例是否在合法集合内
func (u UseCase) Valid() bool {
	for _, c := range UseCases {
		if u == c {
			return true
		}
	}
	return false
}

// DocumentKind 文档类型，决定使用哪一套提示词模板
type DocumentKind string

const (
	// DocumentKindStandard 技术标准（默认）
	DocumentKindStandard DocumentKind = "standard"
	// DocumentKindPatent 专利文件
	DocumentKindPatent DocumentKind = "patent"
	// DocumentKindOther 其他技术文件
	DocumentKindOther DocumentKind = "other"
)

// OrDefault 空值时返回 DocumentKindStandard
func (k DocumentKind) OrDefault() DocumentKind {
	if k == "" {
		return DocumentKindStandard
	}
	return k
}

// PromptSpec 条款生成提示词的输入
type PromptSpec struct {
	// UseCase 生成的章节
	UseCase UseCase `json:"use_case"`

	// DocumentKind 文档类型，空值按标准处理
	DocumentKind DocumentKind `json:"document_kind,omitempty"`

	// Topic 标准主题
	Topic string `json:"topic"`
}
