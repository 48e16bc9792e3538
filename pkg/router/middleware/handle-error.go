// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package middleware

import (
	stderrors "errors"
	"net/http"

	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/errors"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/logger/log"
	"github.com/AMD-AGI/Primus-SaFE/Lens/evaluation-dashboard/pkg/model/rest"
	"github.com/gin-gonic/gin"
)

// HandleErrors renders the first error attached to the context as an error
// envelope. Transport status stays 200; the code lives in meta.
func HandleErrors() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 {
			return
		}
		ctx := c.Request.Context()
		for i := 1; i < len(c.Errors); i++ {
			log.GlobalLogger().WithContext(ctx).Errorf("subsequent error %d in request %s: %v", i, c.Request.URL.Path, c.Errors[i].Err)
		}

		err := c.Errors[0].Err
		var cError *errors.Error
		if stderrors.As(err, &cError) {
			log.GlobalLogger().WithContext(ctx).Errorf("Rest interface error FullPath %s RequestPath %s Code %d Message '%s' Error %+v Stack %v",
				c.FullPath(), c.Request.URL.Path, cError.Code, cError.Message, cError.InnerError, cError.GetStackString())
			c.AbortWithStatusJSON(http.StatusOK, rest.ErrorResp(ctx, cError.Code, cError.Message, nil))
			return
		}
		log.GlobalLogger().WithContext(ctx).Errorf("Rest interface got unwrapped error. FullPath %s RequestPath %s Error %+v",
			c.FullPath(), c.Request.URL.Path, err)
		c.AbortWithStatusJSON(http.StatusOK, rest.ErrorResp(ctx, errors.InternalError, "Unknown error", nil))
	}
}
