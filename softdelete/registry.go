package softdelete

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/schema"
)

// TagName is the struct tag marking a model's deleted column when it is not
// named "deleted":
//
//	Removed bool `gorm:"column:is_removed" softdelete:"flag"`
const TagName = "softdelete"

// Registry derives table declarations and join relations from GORM models.
type Registry struct {
	namer schema.Namer
	cache *sync.Map

	mu     sync.RWMutex
	tables map[reflect.Type]Table
	order  []reflect.Type
}

// NewRegistry creates a registry that names tables the way db does.
func NewRegistry(db *gorm.DB) *Registry {
	var namer schema.Namer = schema.NamingStrategy{}
	if db != nil && db.Config != nil && db.NamingStrategy != nil {
		namer = db.NamingStrategy
	}
	return &Registry{
		namer:  namer,
		cache:  &sync.Map{},
		tables: make(map[reflect.Type]Table),
	}
}

// Register declares each model as a soft-delete table. A model needs exactly
// one primary key and exactly one boolean deleted column.
func (r *Registry) Register(models ...interface{}) error {
	for _, model := range models {
		s, err := r.parse(model)
		if err != nil {
			return err
		}
		t, err := declareSchema(s)
		if err != nil {
			return err
		}

		r.mu.Lock()
		if _, ok := r.tables[s.ModelType]; !ok {
			r.order = append(r.order, s.ModelType)
		}
		r.tables[s.ModelType] = t
		r.mu.Unlock()
	}
	return nil
}

// Table returns the declaration registered for model.
func (r *Registry) Table(model interface{}) (Table, error) {
	s, err := r.parse(model)
	if err != nil {
		return Table{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.tables[s.ModelType]
	if !ok {
		return Table{}, fmt.Errorf("%w: %s", ErrNotRegistered, s.Name)
	}
	return t, nil
}

// MustTable is Table for wiring code that cannot continue without it.
func (r *Registry) MustTable(model interface{}) Table {
	t, err := r.Table(model)
	if err != nil {
		panic(err)
	}
	return t
}

// Tables lists the registered declarations in registration order.
func (r *Registry) Tables() []Table {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tables := make([]Table, 0, len(r.order))
	for _, typ := range r.order {
		tables = append(tables, r.tables[typ])
	}
	return tables
}

// Relation derives the ON clause joining left to right from the GORM
// association declared on either model. Right is taken from the registry when
// registered; otherwise it is a plain table and only Join accepts it.
func (r *Registry) Relation(left, right interface{}) (Relation, error) {
	ls, err := r.parse(left)
	if err != nil {
		return Relation{}, err
	}
	rs, err := r.parse(right)
	if err != nil {
		return Relation{}, err
	}
	if ls.Table == rs.Table {
		return Relation{}, fmt.Errorf("%w: self join on %s", ErrUnsupportedRelation, ls.Table)
	}

	rels := relationsTo(ls, rs.Table)
	if len(rels) == 0 {
		rels = relationsTo(rs, ls.Table)
	}
	switch {
	case len(rels) == 0:
		return Relation{}, fmt.Errorf("%w: %s and %s", ErrNoRelation, ls.Table, rs.Table)
	case len(rels) > 1:
		return Relation{}, fmt.Errorf("%w: %s and %s", ErrAmbiguousRelation, ls.Table, rs.Table)
	}

	rel := rels[0]
	if rel.Type == schema.Many2Many {
		return Relation{}, fmt.Errorf("%w: %s is many to many", ErrUnsupportedRelation, rel.Name)
	}

	on := make([]clause.Expression, 0, len(rel.References))
	for _, ref := range rel.References {
		if ref.PrimaryKey == nil {
			// polymorphic type column
			col := clause.Column{Table: rel.FieldSchema.Table, Name: ref.ForeignKey.DBName}
			on = append(on, clause.Eq{Column: col, Value: ref.PrimaryValue})
			continue
		}
		fkTable, pkTable := rel.FieldSchema.Table, rel.Schema.Table
		if !ref.OwnPrimaryKey {
			fkTable, pkTable = pkTable, fkTable
		}
		fk := clause.Column{Table: fkTable, Name: ref.ForeignKey.DBName}
		pk := clause.Column{Table: pkTable, Name: ref.PrimaryKey.DBName}
		if pkTable == ls.Table {
			on = append(on, clause.Eq{Column: pk, Value: fk})
		} else {
			on = append(on, clause.Eq{Column: fk, Value: pk})
		}
	}

	return Relation{Left: r.tableOrPlain(ls), Right: r.tableOrPlain(rs), On: on}, nil
}

func (r *Registry) parse(model interface{}) (*schema.Schema, error) {
	s, err := schema.Parse(model, r.cache, r.namer)
	if err != nil {
		return nil, fmt.Errorf("softdelete: failed to parse model: %w", err)
	}
	return s, nil
}

func (r *Registry) tableOrPlain(s *schema.Schema) Table {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if t, ok := r.tables[s.ModelType]; ok {
		return t
	}
	t := Table{Name: s.Table}
	if len(s.PrimaryFields) == 1 {
		t.PrimaryKey = s.PrimaryFields[0].DBName
	}
	return t
}

func relationsTo(s *schema.Schema, table string) []*schema.Relationship {
	names := make([]string, 0, len(s.Relationships.Relations))
	for name := range s.Relationships.Relations {
		names = append(names, name)
	}
	sort.Strings(names)

	var rels []*schema.Relationship
	for _, name := range names {
		rel := s.Relationships.Relations[name]
		if rel.FieldSchema != nil && rel.FieldSchema.Table == table {
			rels = append(rels, rel)
		}
	}
	return rels
}

func declareSchema(s *schema.Schema) (Table, error) {
	if len(s.PrimaryFields) != 1 {
		return Table{}, fmt.Errorf("%w: %s", ErrCompositePrimaryKey, s.Name)
	}

	var flags []*schema.Field
	for _, f := range s.Fields {
		if f.DBName == "" {
			continue
		}
		if v, ok := f.Tag.Lookup(TagName); ok && v == "flag" {
			flags = append(flags, f)
		}
	}
	if len(flags) == 0 {
		if f, ok := s.FieldsByDBName[DefaultDeletedColumn]; ok {
			flags = append(flags, f)
		}
	}

	switch {
	case len(flags) == 0:
		return Table{}, fmt.Errorf("%w: %s", ErrNoDeletedColumn, s.Name)
	case len(flags) > 1:
		return Table{}, fmt.Errorf("%w: %s", ErrMultipleDeletedColumns, s.Name)
	case flags[0].DataType != schema.Bool:
		return Table{}, fmt.Errorf("%w: %s.%s", ErrDeletedNotBool, s.Name, flags[0].Name)
	}

	return Table{
		Name:       s.Table,
		PrimaryKey: s.PrimaryFields[0].DBName,
		Deleted:    flags[0].DBName,
	}, nil
}
