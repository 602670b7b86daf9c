package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
)

// buildSchema creates the GraphQL schema wired to our services.
func buildSchema(deps *Dependencies) (graphql.Schema, error) {
	geoPointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "GeoPoint",
		Fields: graphql.Fields{
			"lat": &graphql.Field{Type: graphql.Float},
			"lon": &graphql.Field{Type: graphql.Float},
		},
	})

	boundsType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Bounds",
		Fields: graphql.Fields{
			"north": &graphql.Field{Type: graphql.Float},
			"south": &graphql.Field{Type: graphql.Float},
			"east":  &graphql.Field{Type: graphql.Float},
			"west":  &graphql.Field{Type: graphql.Float},
		},
	})

	huntType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Hunt",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.String},
			"slug":        &graphql.Field{Type: graphql.String},
			"name":        &graphql.Field{Type: graphql.String},
			"description": &graphql.Field{Type: graphql.String},
			"city":        &graphql.Field{Type: graphql.String},
			"status":      &graphql.Field{Type: graphql.String},
		},
	})

	checkpointType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Checkpoint",
		Fields: graphql.Fields{
			"id":        &graphql.Field{Type: graphql.String},
			"hunt_id":   &graphql.Field{Type: graphql.String},
			"name":      &graphql.Field{Type: graphql.String},
			"location":  &graphql.Field{Type: geoPointType},
			"hint":      &graphql.Field{Type: graphql.String},
			"photo_url": &graphql.Field{Type: graphql.String},
			"points":    &graphql.Field{Type: graphql.Int},
			"active":    &graphql.Field{Type: graphql.Boolean},
			"distance":  &graphql.Field{Type: graphql.Float},
		},
	})

	zoneType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Zone",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.String},
			"poi_indices": &graphql.Field{Type: graphql.NewList(graphql.Int)},
			"bounds":      &graphql.Field{Type: boundsType},
			"center":      &graphql.Field{Type: geoPointType},
			"zoom":        &graphql.Field{Type: graphql.Float},
		},
	})

	zonePlanType := graphql.NewObject(graphql.ObjectConfig{
		Name: "ZonePlan",
		Fields: graphql.Fields{
			"id":             &graphql.Field{Type: graphql.String},
			"hunt_id":        &graphql.Field{Type: graphql.String},
			"zones":          &graphql.Field{Type: graphql.NewList(zoneType)},
			"checkpoint_ids": &graphql.Field{Type: graphql.NewList(graphql.String)},
		},
	})

	queryType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"hunts": &graphql.Field{
				Type:        graphql.NewList(huntType),
				Description: "List all hunts",
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					return deps.Hunts.List(p.Context)
				},
			},
			"hunt": &graphql.Field{
				Type:        huntType,
				Description: "Get a hunt by slug",
				Args: graphql.FieldConfigArgument{
					"slug": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					slug := p.Args["slug"].(string)
					return deps.Hunts.GetBySlug(p.Context, slug)
				},
			},
			"checkpoints": &graphql.Field{
				Type:        graphql.NewList(checkpointType),
				Description: "List the checkpoints of a hunt",
				Args: graphql.FieldConfigArgument{
					"hunt_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"active":  &graphql.ArgumentConfig{Type: graphql.Boolean, DefaultValue: false},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					huntID := p.Args["hunt_id"].(string)
					activeOnly := p.Args["active"].(bool)
					return deps.Checkpoints.ListByHunt(p.Context, huntID, activeOnly)
				},
			},
			"checkpointsNearby": &graphql.Field{
				Type:        graphql.NewList(checkpointType),
				Description: "Find checkpoints near a location",
				Args: graphql.FieldConfigArgument{
					"lat":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"lon":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Float)},
					"radius": &graphql.ArgumentConfig{Type: graphql.Float, DefaultValue: 500.0},
					"limit":  &graphql.ArgumentConfig{Type: graphql.Int, DefaultValue: 20},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					lat := p.Args["lat"].(float64)
					lon := p.Args["lon"].(float64)
					radius := p.Args["radius"].(float64)
					limit := p.Args["limit"].(int)
					return deps.Checkpoints.FindNearby(p.Context, lat, lon, radius, limit)
				},
			},
			"zones": &graphql.Field{
				Type:        zonePlanType,
				Description: "Latest zone plan for a hunt",
				Args: graphql.FieldConfigArgument{
					"hunt_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					huntID := p.Args["hunt_id"].(string)
					return deps.Plans.Latest(p.Context, huntID)
				},
			},
			"zoneBounds": &graphql.Field{
				Type:        boundsType,
				Description: "Bounding box spanning every zone of the latest plan",
				Args: graphql.FieldConfigArgument{
					"hunt_id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
				},
				Resolve: func(p graphql.ResolveParams) (interface{}, error) {
					huntID := p.Args["hunt_id"].(string)
					return deps.Plans.OverallBounds(p.Context, huntID)
				},
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query: queryType,
	})
}

// GraphQLHandler serves the GraphQL endpoint.
func GraphQLHandler(deps *Dependencies) fiber.Handler {
	schema, err := buildSchema(deps)
	if err != nil {
		// This would be a programming error in the schema definition
		panic("graphql schema build: " + err.Error())
	}

	type gqlRequest struct {
		Query         string                 `json:"query"`
		OperationName string                 `json:"operationName"`
		Variables     map[string]interface{} `json:"variables"`
	}

	return func(c *fiber.Ctx) error {
		var req gqlRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}

		result := graphql.Do(graphql.Params{
			Schema:         schema,
			RequestString:  req.Query,
			VariableValues: req.Variables,
			OperationName:  req.OperationName,
			Context:        c.Context(),
		})

		return c.JSON(result)
	}
}
