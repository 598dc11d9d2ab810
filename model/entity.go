package model

// EntityField 是持久化实体中的一个字段
type EntityField struct {
	Name         string `json:"name"`
	Type         string `json:"type"`
	ColumnName   string `json:"columnName,omitempty"`
	Relationship string `json:"relationship,omitempty"` // OneToMany / ManyToOne / OneToOne / ManyToMany
	TargetEntity string `json:"targetEntity,omitempty"`
}

// EntityModel 描述一个持久化实体类
type EntityModel struct {
	Name      string        `json:"name"`
	TableName string        `json:"tableName,omitempty"`
	Fields    []EntityField `json:"fields"`
}
