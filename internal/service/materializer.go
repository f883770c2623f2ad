package service

import (
	"fmt"

	"github.com/promoforge/api/internal/catalog"
	"github.com/promoforge/api/internal/model"
)

// MaterializeScene binds a validated scene's props into its template
// blueprint, producing the renderable scene source. Required props the
// scene is missing are filled from the catalog defaults. List props are
// bound as structured values, never flattened to strings.
func MaterializeScene(cat *catalog.Catalog, scene *model.TemplateScene, index int) (model.SceneSource, error) {
	template := cat.ByID(scene.TemplateID)
	if template == nil {
		return model.SceneSource{}, fmt.Errorf("template %q not in catalog", scene.TemplateID)
	}

	props := scene.Props
	defaults := catalog.DefaultProps()
	for _, name := range template.RequiredProps {
		if props.PropSet(name) {
			continue
		}
		switch name {
		case "title":
			props.Title = defaults.Title
		case "subtitle":
			props.Subtitle = defaults.Subtitle
		case "mainText":
			props.MainText = defaults.MainText
		case "buttonText":
			props.ButtonText = defaults.ButtonText
		case "brandName":
			props.BrandName = defaults.BrandName
		case "productName":
			props.ProductName = defaults.ProductName
		case "features":
			props.Features = defaults.Features
		case "stats":
			props.Stats = defaults.Stats
		}
	}

	elements := make([]model.BoundSlot, 0, len(template.Blueprint.Elements))
	for _, slot := range template.Blueprint.Elements {
		elements = append(elements, model.BoundSlot{
			Slot:      slot.Slot,
			Kind:      slot.Kind,
			Animation: slot.Animation,
			Value:     propValue(&props, slot.Slot),
		})
	}

	return model.SceneSource{
		Name:       fmt.Sprintf("Scene%d", index+1),
		TemplateID: template.ID,
		Component:  template.Blueprint.Component,
		Background: template.Blueprint.Background,
		Elements:   elements,
		Props:      props,
	}, nil
}

// propValue resolves a slot name to its typed value. Feature and stat
// lists come back as slices so the renderer receives real arrays.
func propValue(props *model.SceneProps, name string) interface{} {
	switch name {
	case "title":
		return props.Title
	case "subtitle":
		return props.Subtitle
	case "mainText":
		return props.MainText
	case "buttonText":
		return props.ButtonText
	case "brandName":
		return props.BrandName
	case "productName":
		return props.ProductName
	case "features":
		return props.Features
	case "stats":
		return props.Stats
	}
	return nil
}
